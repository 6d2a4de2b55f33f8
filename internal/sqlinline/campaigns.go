package sqlinline

const QInsertCampaign = `--sql 2c38d951-aef1-42b5-a4f6-10f81b85d90f
insert into campaigns(id, user_id, name, objective, status, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, 'active', now(), now())
returning id;
`

const QListCampaignsByUser = `--sql 4b4e3b0b-bcab-4947-8b78-1222f9c24d58
select id, name, objective, status, created_at, updated_at
from campaigns
where user_id = $1::uuid
order by created_at desc
limit $2::int offset $3::int;
`

const QUpdateCampaignStatus = `--sql fceee7b6-bc58-4844-b5e2-c3856175af18
update campaigns
set status = $3::text, updated_at = now()
where id = $1::uuid and user_id = $2::uuid
returning id;
`

const QSelectCampaignByID = `--sql 402c73fd-fe16-4645-a4b9-49735e97aa5c
select id, user_id, name, objective, status, created_at, updated_at
from campaigns
where id = $1::uuid
limit 1;
`
